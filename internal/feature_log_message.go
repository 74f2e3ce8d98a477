package internal

import "time"

const FeatureLogMessageType = "featureLogMessage"

// FeatureLogMessage is one dashboard event: a control change, a render pass or a data load
type FeatureLogMessage struct {
	Time       string    `json:"time" bson:"time"`
	TimeStamp  time.Time `json:"timestamp" bson:"timestamp"`
	Feature    string    `json:"feature" bson:"feature"`
	SessionId  string    `json:"id" bson:"session_id"`
	Text       string    `json:"text" bson:"text"`
	Importance string    `json:"importance" bson:"importance"`
}

func (fm *FeatureLogMessage) DataType() string {
	return FeatureLogMessageType
}
