// Package wizard implements the order creation state machine and the session
// object it owns.
//
// Steps and transitions:
//
//	contact ──Forward──> package ──Forward (HQ)──────> rate    ──Complete──> done
//	   ^                   │  ^ ──Forward (PARTNER)──> pricing ──Complete──> done
//	   └──────Back─────────┘  └──────────Back──────────┘
//
// Every transition is declared once in a table together with the guards that
// must pass before it is taken. Looking up a pair that is not in the table
// fails with ErrTransitionNotAllowed, so illegal transitions cannot be taken
// by accident.
//
// The Session is the single owner of the draft and the saga state (order id,
// shipment id, fulfilled shipment, current rate quote). Resolvers and the
// submission saga receive the session handle instead of sharing variables.
package wizard
