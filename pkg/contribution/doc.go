// Package contribution turns the operator's manual tags for Unknown packages
// into a module that can be shared with the community repository.
//
// Build produces an ordinary module: it passes the same validation as a
// loaded file and encodes to the same wire format. A Submitter hands the
// result on; the only built-in one writes to a local outbox directory.
package contribution
