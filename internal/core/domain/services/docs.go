// Package services holds the domain services that own every parcel business
// rule spanning more than a field update.
//
// The package includes:
//   - ParcelStateMachine: the only entry point for creating parcels, moving them
//     through their lifecycle, confirming payment and adding charges. Each
//     operation returns a new parcel value and the effects it produced.
//   - PaymentSubledger: decides when a payment may be confirmed and is the single
//     place a Revenue effect is created.
//   - NotificationDispatcher: turns Notify effects into inbox records with
//     identifiers derived from the envelope that carried them.
//
// None of these services perform I/O; callers persist and publish the results.
package services
