package notifications

import "context"

// Result reports one platform's delivery outcome for a single round.
type Result struct {
	Platform string
	Success  bool
}

// Notifier delivers one formatted message to a single messaging platform.
// Implementations apply their own platform length cap before transmission
// and perform exactly one delivery attempt. Transport failures are logged
// and mapped to a failed Result rather than returned, so one platform can
// never abort its siblings in a round.
type Notifier interface {
	Name() string
	Send(ctx context.Context, message string) Result
}
