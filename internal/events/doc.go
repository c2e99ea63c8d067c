// Package events carries deck job lifecycle notifications.
//
// The task runner emits a JobEvent every time a job changes status. Handlers
// registered on an emitter react to them, for example by updating metrics,
// without the runner knowing who listens.
package events
