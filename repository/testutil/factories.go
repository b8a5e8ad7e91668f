package testutil

import (
	"salespoint/models"
)

// CreateTestEntry creates an entry at checkpoint with a plausible spread of counts
func CreateTestEntry(checkpoint models.Checkpoint, calls int) models.CheckpointEntry {
	return models.CheckpointEntry{
		ReportingTime:    checkpoint,
		Calls:            calls,
		MemoAttempts:     calls * 8 / 10,
		ManagerAttempts:  calls / 2,
		SpeechAttempts:   calls * 6 / 10,
		ProductSuccesses: map[string]int{"주력상품A": calls / 10, "프로모션B": calls / 20},
		Activations:      calls / 20,
	}
}

// CreateTestDailyRecord creates a record with default settings and the given entries
func CreateTestDailyRecord(entries ...models.CheckpointEntry) *models.DailyRecord {
	record := models.NewDailyRecord(models.DefaultTeamSettings())
	record.Entries = append(record.Entries, entries...)
	models.SortEntries(record.Entries)
	return record
}

// CreateTestSnapshot creates a monthly snapshot
func CreateTestSnapshot(activations int, products map[string]int) *models.MonthlyProgressSnapshot {
	return &models.MonthlyProgressSnapshot{
		Products:    products,
		Activations: activations,
	}
}
