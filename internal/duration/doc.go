// Package duration turns the free-text amount a user wants to book into a
// bounded time.Duration.
//
// # Grammar
//
// The input is either empty, meaning "everything elapsed so far", or one or
// two non-negative decimal fields separated by a single colon. With the
// default HoursMinutes order "45" is 45 minutes and "1:30" is one hour and
// thirty minutes. MinutesHours swaps the two fields of the colon form.
//
// # Bound
//
// Every amount is checked against the bound, the clock's elapsed time at the
// moment of the request. Checks run in a fixed order and the first failure
// rejects the whole input; nothing is clamped.
//
// Besides the per-field checks (minutes below 60, hours no more than the
// bound's whole hours, minutes within the bound when it is under an hour)
// the combined amount must not exceed the bound. "1:50" passes every field check against an elapsed 1:10 and is
// still rejected with ErrExceedsBound, so booking never drives the clock
// below zero.
package duration
