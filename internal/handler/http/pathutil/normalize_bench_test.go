package pathutil

import "testing"

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{
		"/posts/book/9788936434267",
		"/posts/user/3f2c8a4e-6b1d-4c57-9e0a-2d7f5b8c1a90?take=10",
		"/posts/42/",
		"/metrics",
	}
	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		_ = NormalizePath(paths[i%len(paths)])
	}
}

func BenchmarkParseUserID(b *testing.B) {
	for b.Loop() {
		_, _ = ParseUserID("3f2c8a4e-6b1d-4c57-9e0a-2d7f5b8c1a90")
	}
}
