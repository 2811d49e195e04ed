package repository

import "github.com/pharmaqualify/qms-gin/internal/statemachine"

// 各模块共享的流转动作词汇表
const (
	ActionStart         statemachine.Action = "Start"
	ActionApprove       statemachine.Action = "Approve"
	ActionComplete      statemachine.Action = "Complete"
	ActionClose         statemachine.Action = "Close"
	ActionReject        statemachine.Action = "Reject"
	ActionReview        statemachine.Action = "Review"
	ActionStop          statemachine.Action = "Stop"
	ActionExpire        statemachine.Action = "Expire"
	ActionStartTesting  statemachine.Action = "StartTesting"
	ActionSendToReview  statemachine.Action = "SendToReview"
	ActionRelease       statemachine.Action = "Release"
	ActionSubmit        statemachine.Action = "Submit"
	ActionMakeEffective statemachine.Action = "MakeEffective"
	ActionSupersede     statemachine.Action = "Supersede"
)
