// Package ogpl provides the OGPL (outward gate pass cum loading sheet)
// aggregate: the manifest of bookings carried by one vehicle on one trip.
//
// The package includes:
//   - OGPL: the aggregate root holding loading records and, once closed, the
//     unloading record
//   - Status: Created -> InTransit -> Completed, with Cancelled reachable from
//     Created and InTransit
//   - LoadingRecord: the link between a booking and the sheet it was loaded on
//   - UnloadingRecord and Condition: the per-booking outcome captured at the
//     destination
//
// Key business rules:
//   - Bookings can only be loaded while the sheet is Created, and only once
//   - A sheet cannot depart or complete without at least one loading record
//   - A sheet is unloaded at most once; a second attempt is rejected
//   - A damaged condition must carry remarks
package ogpl
