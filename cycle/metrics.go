package cycle

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is used as the default when no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit(Axis)            {}
func (NoopMetrics) Miss(Axis)           {}
func (NoopMetrics) Remove(RemoveReason) {}
func (NoopMetrics) Size(int, int, int)  {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
