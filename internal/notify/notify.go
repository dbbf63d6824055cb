package notify

import "github.com/gen2brain/beeep"

// SystemNotifier shows transient desktop notifications. Delivery failures are
// swallowed; a missed toast is never worth an error path.
type SystemNotifier struct {
	appName string
}

func NewSystemNotifier(appName string) *SystemNotifier {
	if appName == "" {
		appName = "voicenotes"
	}
	return &SystemNotifier{appName: appName}
}

func (n *SystemNotifier) Notify(title string, message string) {
	if title == "" {
		title = n.appName
	}
	_ = beeep.Notify(title, message, "")
}
