package model

// SyncJob asks the mock sync to pretend the catalog of a user was pushed.
type SyncJob struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Reason    string `json:"reason"`
	CreatedTs int64  `json:"created_ts"`
}

// SyncStatus is what the indicator shows.
type SyncStatus struct {
	Syncing bool `json:"syncing"`
	// Active is true while a user is logged in, i.e. "cloud sync" is on for this device.
	Active bool `json:"active"`
}
