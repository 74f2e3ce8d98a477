package internal

type LogHandler interface {
	FeatureEvent(feature, id, text string)
	Debug(text string)
	Warn(text string)
	Error(text string, err error)
}

// Discard drops every event; components start with it until a logger is set
var Discard LogHandler = discard{}

type discard struct{}

func (discard) FeatureEvent(feature, id, text string) {}
func (discard) Debug(text string) {}
func (discard) Warn(text string) {}
func (discard) Error(text string, err error) {}
