// Package parcel provides the Parcel aggregate and the value objects that
// describe its lifecycle and payment state.
//
// The package includes:
//   - Parcel: the aggregate root holding identity, charges, payment record and status history
//   - Status: the lifecycle state graph (pending -> in_transit -> delivered -> received, with cancellation)
//   - PaymentMethod: prepaid, cash-on-delivery or pay-forward
//   - Payment: the write-once payment record (isPaid, paidAt, paidBy)
//   - StatusUpdate: one append-only entry in the status history
//
// Key business rules enforced here regardless of caller:
//   - No transition may skip a state of the primary chain
//   - A cash-on-delivery parcel cannot be received while unpaid
//   - Once paid, a parcel stays paid and its payment record is never rewritten
//   - totalAmount always equals amount + floatAmount
//   - The status history only grows, is ordered by timestamp, and its last entry
//     matches the current status
//
// Effects (notifications, revenue) are not produced here; see the domain
// services package for the state machine that derives them.
package parcel
