package messaging

// PlayerSubject is the subject a player's session listens on.
func PlayerSubject(charId string) string {
	return "player-" + charId
}

// Publisher sends messages to subjects.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// PlayerPublisher delivers messages to individual players.
type PlayerPublisher struct {
	pub Publisher
}

func NewPlayerPublisher(pub Publisher) *PlayerPublisher {
	return &PlayerPublisher{pub: pub}
}

// PublishToPlayer sends data to one player's session.
func (p *PlayerPublisher) PublishToPlayer(charId string, data []byte) error {
	return p.pub.Publish(PlayerSubject(charId), data)
}
