package domain

// Monitoring defines an interface for collecting, storing, and retrieving
// metrics related to slot lifecycle activity.
//
// Implementations of this interface can persist metrics in various ways, such as:
// - In-memory storage for simple debugging and development purposes.
// - Real-time logging for operational monitoring.
// - External systems like dashboards, time-series databases, or analytics platforms.
type Monitoring interface {
	// SaveMetrics stores a snapshot of a slot's runtime state.
	//
	// Implementations typically capture the current status, iteration and
	// failure counters, timestamps and the most recent iteration error.
	//
	// Parameters:
	//   - state: SlotState snapshot of the slot's lifecycle details.
	SaveMetrics(state SlotState)
}
