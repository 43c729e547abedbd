package flappy

// Cues receives the fire-and-forget visual signals the state machine emits.
// Implementations must not call back into the game.
type Cues interface {
	ShowMessage()
	HideMessage()
	BirdDied()
	ShowResult(score, best int)
	HideResult()
	ScoreChanged(score, best int)
}

// cueSet fans every cue out to several receivers in order.
type cueSet []Cues

func (cs cueSet) ShowMessage() {
	for _, c := range cs {
		c.ShowMessage()
	}
}

func (cs cueSet) HideMessage() {
	for _, c := range cs {
		c.HideMessage()
	}
}

func (cs cueSet) BirdDied() {
	for _, c := range cs {
		c.BirdDied()
	}
}

func (cs cueSet) ShowResult(score, best int) {
	for _, c := range cs {
		c.ShowResult(score, best)
	}
}

func (cs cueSet) HideResult() {
	for _, c := range cs {
		c.HideResult()
	}
}

func (cs cueSet) ScoreChanged(score, best int) {
	for _, c := range cs {
		c.ScoreChanged(score, best)
	}
}
