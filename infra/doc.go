// Package infra contains technical adapters such as the structured logger,
// run-recording sinks and the MQTT schedule publisher. These packages should
// depend only on the interfaces defined in the core packages.
package infra
