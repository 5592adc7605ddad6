// Package poller fetches the contingency status page for sefazwatch.
//
// This package is internal to sefazwatch. It wraps net/http with a
// per-request timeout, a response size limit and charset decoding so the
// rest of the program only ever sees UTF-8 HTML.
//
// The main component is [Client]; [Response] carries the outcome of a
// single fetch, including any error, instead of returning it separately.
//
// There is no retry and no scheduling here: one run performs one fetch and
// repetition is left to an external scheduler.
package poller
