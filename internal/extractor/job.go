package extractor

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// IndexJobArgs contains the arguments for an indexing job submitted to River.
// The struct is used as the unique key for jobs to prevent duplicate work per
// extraction.
type IndexJobArgs struct {
	// ExtractionID identifies the extraction to index. It is marked as unique
	// so River can enforce one job per extraction according to
	// InsertOpts.UniqueOpts.
	ExtractionID uuid.UUID `json:"extraction_id" river:"unique"`

	// maxAttempts configures the maximum number of times River should retry the job.
	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the indexing worker.
func (args IndexJobArgs) Kind() string { return "IndexExtractionJob" }

// InsertOpts returns the River options that control how the job is enqueued,
// including the maximum retry attempts and uniqueness constraints to prevent
// duplicate jobs for the same extraction across non-terminal job states.
func (args IndexJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		// make sure we only have one live job per extraction
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
