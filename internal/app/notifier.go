package app

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/logger"
)

type titleSetter interface {
	SetTitle(name string)
}

type debugSink interface {
	Debugf(format string, args ...any)
}

// notifier forwards registry notifications to the window and console.
type notifier struct {
	title   titleSetter
	console debugSink
	log     *zap.Logger
}

func newNotifier(title titleSetter, con debugSink) *notifier {
	return &notifier{title: title, console: con, log: logger.Named("scene")}
}

func (n *notifier) NotifyClearScene() {
	n.log.Debug("scene cleared")
}

func (n *notifier) NotifyDeleteObject(name string) {
	n.log.Debug("object deleted", zap.String("name", name))
	n.console.Debugf("deleted %s", name)
}

func (n *notifier) SendObjectList(objects []scene.ObjectInfo) {
	n.log.Debug("object list", zap.Int("count", len(objects)))
}

func (n *notifier) SetWindowTitle(name string) {
	n.title.SetTitle(name)
}
