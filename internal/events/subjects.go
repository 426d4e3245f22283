package events

const (
	StreamName   = "SITEWISE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectAnalysisCompleted(analysisID string) string {
	return "siting.analysis." + analysisID + ".completed"
}

func SubjectAnalysisFailed(analysisID string) string {
	return "siting.analysis." + analysisID + ".failed"
}

func SubjectBatchCompleted(batchID string) string {
	return "siting.batch." + batchID + ".completed"
}
