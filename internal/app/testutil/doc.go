// Package testutil provides test doubles for the transcription pipeline.
//
// The doubles satisfy the pipeline interfaces structurally so that any
// package, including the pipeline itself, can use them from its tests:
//
//   - MockTranscriber: scripted speech-to-text with per-artifact responses,
//     errors and latency, plus call history and an in-flight high-water mark.
//   - FakeExtractor, FakeProber, FakeStore: ffmpeg/ffprobe and artifact
//     cleanup stand-ins that record what they were asked to do.
//   - ConcurrencyTracker: a pipeline observer measuring how many segment
//     pipelines run at once.
//   - MockJobDAO: an in-memory job repository.
//
// # Usage
//
//	transcriber := testutil.NewMockTranscriber().
//	    SetResponseForFile(testutil.ChunkPath(0), "hello").
//	    SetErrorForFile(testutil.ChunkPath(3), errors.New("rate limited"))
//	extractor := testutil.NewFakeExtractor()
//	store := testutil.NewFakeStore()
//
// Use ChunkPath to address the artifact FakeExtractor produces for a
// segment index.
package testutil
