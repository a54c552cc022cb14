// Package domain models Dial 112 incident records as served by the intake
// backend and the summary views the operations dashboard renders.
//
// # Data Source
//
// The intake backend transcribes emergency calls, classifies them and stores
// one row per ticket. Its listing endpoint returns those rows as JSON, but the
// shape is not stable across deployments: the array may be the body itself or
// sit under a "data", "incidents" or "records" property, and each row may use
// any of several key spellings for the same field.
//
// # Field Resolution
//
// Every canonical field has an ordered list of candidate keys (see
// fieldTable). A candidate is present when its value is not null, false,
// numeric zero or the empty string. The first present candidate wins and is
// coerced to the field's type; if coercion fails the field default applies
// and later candidates are not consulted:
//
//	{"lat": "17.68"}                     -> Latitude 17.68
//	{"lat": "n/a", "latitude": 16.5}     -> Latitude 0
//	{"lat": 0, "latitude": 16.5}         -> Latitude 16.5
//
// Rows that are not JSON objects (null, numbers, strings, arrays) are dropped
// without error. Whole-batch problems are reported as [ErrInvalidResponseFormat]
// or [ErrUnexpectedResponseShape]; transport problems as [TransportError].
//
// # Crime Types
//
// The backend classifier emits seven top-level categories: Accident, Robbery,
// Body Offence, Disaster, Offence Against Public, Missing and Offence Against
// Women. Each has a fixed display color; anything else renders gray.
package domain
