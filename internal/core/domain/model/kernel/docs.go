// Package kernel provides the shared value objects of the parcel domain.
//
// The package includes:
//   - UUID: identifiers for parcels, status updates, notifications and envelopes
//   - Money: non-negative decimal amounts used for base and float charges
//   - TrackingNumber: the human-facing, immutable parcel identifier
//   - Clock: the injectable time source
//
// Value objects are immutable; the ones that cannot have a meaningful zero value
// carry a constructor guard and expose Validate.
package kernel
