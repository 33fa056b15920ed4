package mq

// IndexRebuiltEvent is published after every committed rebuild.
type IndexRebuiltEvent struct {
	RunId      int64  `json:"run_id,string"`
	Reason     string `json:"reason"`
	Products   int64  `json:"products"`
	Changelog  int64  `json:"changelog"`
	Summaries  int64  `json:"summaries"`
	StartedAt  int64  `json:"started_at"`
	FinishedAt int64  `json:"finished_at"`
}
