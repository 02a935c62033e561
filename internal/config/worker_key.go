package config

type WorkerKeyStruct struct {
	PersistEventsQueue   string
	PersistOutcomesQueue string
}

var WorkerKey = &WorkerKeyStruct{
	PersistEventsQueue:   "persist_events_queue",
	PersistOutcomesQueue: "persist_outcomes_queue",
}
