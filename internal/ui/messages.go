package ui

import "ytclip/internal/progress"

type jobUpdateMsg struct {
	U progress.Update
}

type jobLogMsg struct {
	L progress.Log
}

type jobResultMsg struct {
	R progress.Result
}

// workDoneMsg is sent once the work function returns.
type workDoneMsg struct {
	Err error
}
