// Package events defines the domain events the scheduler publishes after a
// transaction commits and the emitter that dispatches them to handlers.
//
// Handlers are registered on an InMemoryEventEmitter at startup. The Kafka
// publisher is one such handler; tests register in-memory recorders.
package events
