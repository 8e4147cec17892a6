// Package resource bounds what a clustering run may consume: assignment
// worker slots, working memory and input read throughput.
//
// All methods are safe on a nil *Controller, which imposes no limits, so
// callers can pass an optional controller straight through.
package resource
