package ui

import "time"

const infoTTL = 5 * time.Second

// notice is the transient message under the menu.
type notice struct {
	text    string
	expires time.Time
}

func (n notice) expired(now time.Time) bool {
	return n.text != "" && now.After(n.expires)
}

func (m *Model) setInfo(message string) {
	m.info = notice{text: message, expires: time.Now().Add(infoTTL)}
}

// expireInfo drops the notice once its time is up.
func (m *Model) expireInfo() {
	if m.info.expired(time.Now()) {
		m.info = notice{}
	}
}

func (m *Model) forceClearInfo() {
	m.info = notice{}
}

func (m *Model) currentInfo() string {
	m.expireInfo()
	return m.info.text
}
