// Package events defines the topics and versioned payloads published on the
// in-process event bus.
package events

import (
	"time"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// Topics.
const (
	TopicPlayerAdded     = "roster.player.added"
	TopicPlayerRemoved   = "roster.player.removed"
	TopicSessionStarted  = "session.started"
	TopicRoundDrawn      = "session.round.drawn"
	TopicResultRecorded  = "session.result.recorded"
	TopicSessionFinished = "session.finished"
	TopicSessionReset    = "session.reset"
	TopicSessionEnded    = "session.ended"
	TopicArchiveCleared  = "archive.cleared"
)

type PlayerAddedPayloadV1 struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Name     string               `json:"name"`
	Rating   sharedtypes.Rating   `json:"rating"`
}

type PlayerRemovedPayloadV1 struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
}

type SessionStartedPayloadV1 struct {
	Session sessiondomain.Session `json:"session"`
}

type RoundDrawnPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Round     int                   `json:"round"`
	Matches   []sessiondomain.Match `json:"matches"`
}

type ResultRecordedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	MatchID   sharedtypes.MatchID   `json:"match_id"`
	Result    sessiondomain.Result  `json:"result"`
}

type SessionFinishedPayloadV1 struct {
	Session  sessiondomain.Session        `json:"session"`
	Snapshot sessiondomain.DaySnapshot    `json:"snapshot"`
	Deltas   map[sharedtypes.PlayerID]int `json:"deltas"`
}

type SessionResetPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
}

type SessionEndedPayloadV1 struct {
	SessionID sharedtypes.SessionID `json:"session_id"`
	Finished  bool                  `json:"finished"`
}

type ArchiveClearedPayloadV1 struct {
	ClearedAt time.Time `json:"cleared_at"`
	Snapshots int       `json:"snapshots"`
}

// Failure payloads returned as OperationResult failures by the services.

type RosterOperationFailedPayloadV1 struct {
	Operation string `json:"operation"`
	Reason    string `json:"reason"`
}

type SessionOperationFailedPayloadV1 struct {
	Operation string `json:"operation"`
	Reason    string `json:"reason"`
}

type ArchiveOperationFailedPayloadV1 struct {
	Operation string `json:"operation"`
	Reason    string `json:"reason"`
}
