package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventPowerInvoke requests activation of a heart power at the cursor
	// Trigger: InputHandler (number keys)
	// Consumer: PowerSystem | Payload: *PowerInvokePayload
	EventPowerInvoke EventType = iota

	// EventPowerActivated signals a power invocation that passed essence
	// and cooldown checks
	// Trigger: PowerSystem
	// Consumer: AudioCues, HUD | Payload: *PowerInvokePayload
	EventPowerActivated

	// EventPowerExpired marks a power's overlay entries as swept
	// Trigger: PowerSystem timeout
	// Consumer: AudioCues, HUD | Payload: *PowerExpiredPayload
	EventPowerExpired

	// EventPropPlace requests placing a prop at the cursor
	// Trigger: InputHandler (b/s keys)
	// Consumer: PropSystem | Payload: *PropPlacePayload
	EventPropPlace

	// EventPropClear requests removing the prop at the cursor
	// Trigger: InputHandler (x key)
	// Consumer: PropSystem | Payload: *PropClearPayload
	EventPropClear

	// EventVisitorSpawned signals a visitor entered through a gate
	// Trigger: SpawnSystem | Payload: *VisitorPayload
	EventVisitorSpawned

	// EventVisitorReachedHeart signals a visitor touched the heart
	// Trigger: MovementSystem
	// Consumer: HeartSystem, AudioCues | Payload: *VisitorPayload
	EventVisitorReachedHeart

	// EventVisitorBanished signals a visitor left through a gate
	// Trigger: MovementSystem
	// Consumer: ScoreSystem, AudioCues | Payload: *VisitorPayload
	EventVisitorBanished

	// EventWaveStarted signals the first spawn of a wave
	// Trigger: SpawnSystem | Payload: *WavePayload
	EventWaveStarted

	// EventWaveCleared signals a wave's last visitor despawned
	// Trigger: SpawnSystem | Payload: *WavePayload
	EventWaveCleared

	// EventPathsDirty signals that planned paths may be stale
	// Trigger: PropSystem after placement/removal
	// Consumer: NavigationSystem | Payload: nil
	EventPathsDirty

	// EventGameOver signals defeat (heart drained) or victory (waves cleared)
	// Trigger: HeartSystem
	// Consumer: game loop, LedgerSystem | Payload: *GameOverPayload
	EventGameOver
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64 // For deduplication
	Timestamp time.Time
}
