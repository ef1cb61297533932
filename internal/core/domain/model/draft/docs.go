// Package draft holds the mutable form data of a wizard session.
//
// A Draft is created when a session starts (empty, or seeded from an existing
// order) and is dropped when the session ends. Numeric package fields are kept
// as strings, exactly as typed by the operator, and only become numbers through
// PackageDraft.Parse, which never fails: unparsable fields become 0 and are
// reported in ParsedPackage.Defaulted.
//
// Step validation lives here as well (ValidateContactStep, ValidatePackageStep,
// ValidatePricingStep) because it only looks at the draft.
package draft
