// Package providers contains Completer implementations for language model
// backends. Each sub-package adapts one wire protocol; all of them embed
// modeladapter.ModelAdapter for HTTP plumbing and shadow Complete.
package providers
