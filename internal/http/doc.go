// Package http provides HTTP handlers and middleware for the working-hours API.
//
// The router exposes the following endpoints:
//   - GET /time-ranges, PUT /time-ranges: list and wholesale-replace the weekly
//     working windows, exchanging the `timeRangeDTO` payload defined in
//     config_handler.go. A replace is atomic: one rejected entry rejects the
//     whole batch with a field-indexed error map.
//   - GET /excluded-dates, PUT /excluded-dates: list and wholesale-replace the
//     calendar-date exclusions, with the same batch semantics.
//   - GET /timezone, PUT /timezone: the timezone identifier, UTC offset in
//     minutes, and the selected holiday region code.
//   - GET /regions: enumerate the built-in holiday region codes.
//   - GET /regions/{code}/holidays: the region's holidays with their next
//     future occurrence dates.
//   - GET /working-hours?at=RFC3339: evaluate whether the instant falls within
//     working hours; `at` defaults to the current time.
//   - GET /metrics: the Prometheus scrape endpoint.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
