package services

import (
	"fmt"

	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/pkg/errs"
)

// Business rules raised by the reconciler before any network call.
const (
	RuleBoxOutOfStock = "box_out_of_stock"
	RuleBoxNotFound   = "box_not_found"
)

// BoxAction is what the box resolver has to do remotely.
type BoxAction int

const (
	// BoxActionNone means the draft already matches inventory.
	BoxActionNone BoxAction = iota
	// BoxActionLink binds the draft to an existing box without touching it.
	BoxActionLink
	// BoxActionUpdate changes the name and/or dimensions of the bound box.
	BoxActionUpdate
	// BoxActionCreate adds a new box with the initial stock.
	BoxActionCreate
)

func (a BoxAction) String() string {
	switch a {
	case BoxActionLink:
		return "link"
	case BoxActionUpdate:
		return "update"
	case BoxActionCreate:
		return "create"
	default:
		return "none"
	}
}

// BoxPlan is the outcome of a reconciliation.
//
// BoxID is set for Link and Update. Patch carries only the changed fields of
// an Update. Spec is the body of a Create.
type BoxPlan struct {
	Action BoxAction
	BoxID  string
	Patch  box.Patch
	Spec   box.Spec
}

// BoxReconciler compares a package draft with the known boxes.
//
// Decision table, evaluated in order:
//   - a STORE package bound to a box with no stock is rejected
//   - a bound box whose name or dimensions differ is updated in place
//   - an unbound package whose name equals (case-sensitively) a known box is linked to it,
//     unless it is a STORE package and that box has no stock
//   - an unbound package with a name creates a new box with stock 1
//   - anything else needs no action
//
// Example usage:
//
//	plan, err := services.NewBoxReconciler().Reconcile(d.Package, catalog)
//	if err != nil {
//	    // business rule: block the transition, no network call
//	}
//	switch plan.Action {
//	case services.BoxActionUpdate:
//	    // boxClient.Update(ctx, plan.BoxID, plan.Patch)
//	}
type BoxReconciler struct{}

// NewBoxReconciler creates a new BoxReconciler instance.
func NewBoxReconciler() BoxReconciler {
	return BoxReconciler{}
}

// Reconcile returns the plan for pkg against known.
//
// Parameters:
//   - pkg: the package step of the draft; numbers are parsed here, garbage counts as 0
//   - known: the box catalog read model
//
// Returns:
//   - BoxPlan: what to do remotely
//   - error: errs.BusinessRuleError with RuleBoxOutOfStock or RuleBoxNotFound
func (r BoxReconciler) Reconcile(pkg draft.PackageDraft, known []*box.Box) (BoxPlan, error) {
	parsed := pkg.Parse()

	if pkg.HasBox() {
		bound := findByID(known, pkg.BoxID)
		if bound == nil {
			return BoxPlan{}, errs.NewBusinessRuleError(RuleBoxNotFound,
				fmt.Sprintf("box %s is not in the inventory", pkg.BoxID))
		}
		if err := checkStock(pkg, bound); err != nil {
			return BoxPlan{}, err
		}

		var patch box.Patch
		if parsed.Name != "" && bound.NameDiffers(parsed.Name) {
			name := parsed.Name
			patch.Name = &name
		}
		if bound.DimensionsDiffer(parsed.Dimensions) {
			dims := parsed.Dimensions
			patch.Dimensions = &dims
		}
		if patch.IsEmpty() {
			return BoxPlan{Action: BoxActionNone, BoxID: bound.ID()}, nil
		}
		return BoxPlan{Action: BoxActionUpdate, BoxID: bound.ID(), Patch: patch}, nil
	}

	if parsed.Name == "" {
		return BoxPlan{Action: BoxActionNone}, nil
	}
	if match := findByName(known, parsed.Name); match != nil {
		if err := checkStock(pkg, match); err != nil {
			return BoxPlan{}, err
		}
		return BoxPlan{Action: BoxActionLink, BoxID: match.ID()}, nil
	}
	return BoxPlan{
		Action: BoxActionCreate,
		Spec: box.Spec{
			Name:       parsed.Name,
			Dimensions: parsed.Dimensions,
			Stock:      box.InitialStock,
		},
	}, nil
}

// checkStock rejects a STORE package whose box has nothing left to hand out.
func checkStock(pkg draft.PackageDraft, b *box.Box) error {
	if pkg.IsStoreOwned() && !b.HasStock() {
		return errs.NewBusinessRuleError(RuleBoxOutOfStock,
			fmt.Sprintf("box %q has no stock left", b.Name()))
	}
	return nil
}

func findByID(known []*box.Box, id string) *box.Box {
	for _, b := range known {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

func findByName(known []*box.Box, name string) *box.Box {
	for _, b := range known {
		if b.Name() == name {
			return b
		}
	}
	return nil
}
