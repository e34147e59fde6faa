package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"gitee.com/taoJie_1/salon-agent/dao"
	"github.com/sirupsen/logrus"
)

type fakeStore struct {
	data map[string]string
	err  error
}

func (f *fakeStore) GetAnswerCached(_ context.Context, question string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	answer, ok := f.data[question]
	return answer, ok, nil
}

type fakeEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (f *fakeEmbedder) CreateEmbedding(_ context.Context, _ string) ([]float32, error) {
	f.called = true
	return f.vec, f.err
}

type fakeSearcher struct {
	results []dao.SearchResult
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, _ []float32, _ int) ([]dao.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func newTestMatcher(store *fakeStore, embedder *fakeEmbedder, searcher *fakeSearcher, threshold float32) *MatcherService {
	m := &MatcherService{
		store:     store,
		threshold: threshold,
		topK:      3,
		log:       logrus.New(),
	}
	if embedder != nil {
		m.embedder = embedder
	}
	if searcher != nil {
		m.searcher = searcher
	}
	return m
}

func TestMatchExactHit(t *testing.T) {
	store := &fakeStore{data: map[string]string{"do you offer haircuts?": "Yes, every day."}}
	embedder := &fakeEmbedder{vec: []float32{1, 0}}
	m := newTestMatcher(store, embedder, &fakeSearcher{}, 0.77)

	// 原始输入大小写和空白不同, 规范化后精确命中
	result, err := m.Match(context.Background(), "  Do You Offer Haircuts? ")
	if err != nil {
		t.Fatalf("匹配失败: %v", err)
	}
	if !result.Matched || result.Answer != "Yes, every day." {
		t.Fatalf("应精确命中: %+v", result)
	}
	if result.Similarity != 1 {
		t.Fatalf("精确命中相似度应为1: %f", result.Similarity)
	}
	if embedder.called {
		t.Fatal("精确命中后不应再调用向量化服务")
	}
}

func TestMatchSemanticThreshold(t *testing.T) {
	store := &fakeStore{data: map[string]string{}}

	tests := []struct {
		name       string
		similarity float32
		threshold  float32
		wantMatch  bool
	}{
		{"高于阈值命中", 0.85, 0.77, true},
		{"等于阈值命中", 0.77, 0.77, true},
		{"低于阈值未命中", 0.70, 0.77, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{results: []dao.SearchResult{
				{Question: "do you offer haircuts?", Answer: "Yes, every day.", Similarity: tt.similarity},
			}}
			m := newTestMatcher(store, &fakeEmbedder{vec: []float32{1, 0}}, searcher, tt.threshold)

			result, err := m.Match(context.Background(), "can i get a haircut")
			if err != nil {
				t.Fatalf("匹配失败: %v", err)
			}
			if result.Matched != tt.wantMatch {
				t.Fatalf("期望 matched=%v, 实际 %+v", tt.wantMatch, result)
			}
			if tt.wantMatch && result.Answer != "Yes, every day." {
				t.Fatalf("命中答案不正确: %s", result.Answer)
			}
		})
	}
}

func TestMatchPicksHighestSimilarity(t *testing.T) {
	store := &fakeStore{data: map[string]string{}}
	// Search约定按相似度降序返回, 匹配器取首位
	searcher := &fakeSearcher{results: []dao.SearchResult{
		{Question: "best match", Answer: "first", Similarity: 0.90},
		{Question: "second match", Answer: "second", Similarity: 0.80},
	}}
	m := newTestMatcher(store, &fakeEmbedder{vec: []float32{1, 0}}, searcher, 0.77)

	result, err := m.Match(context.Background(), "anything")
	if err != nil {
		t.Fatalf("匹配失败: %v", err)
	}
	if !result.Matched || result.Answer != "first" {
		t.Fatalf("应命中相似度最高的条目: %+v", result)
	}
}

func TestMatchDegradesOnFailures(t *testing.T) {
	store := &fakeStore{data: map[string]string{}}

	// 向量化服务故障 -> 未命中且不报错
	m := newTestMatcher(store, &fakeEmbedder{err: errors.New("embedding down")}, &fakeSearcher{}, 0.77)
	result, err := m.Match(context.Background(), "hello")
	if err != nil || result.Matched {
		t.Fatalf("向量化故障应降级为未命中: result=%+v err=%v", result, err)
	}

	// 向量库故障 -> 未命中且不报错
	m = newTestMatcher(store, &fakeEmbedder{vec: []float32{1}}, &fakeSearcher{err: errors.New("vector db down")}, 0.77)
	result, err = m.Match(context.Background(), "hello")
	if err != nil || result.Matched {
		t.Fatalf("向量库故障应降级为未命中: result=%+v err=%v", result, err)
	}

	// 向量库为空 -> 未命中且不报错
	m = newTestMatcher(store, &fakeEmbedder{vec: []float32{1}}, &fakeSearcher{err: sql.ErrNoRows}, 0.77)
	result, err = m.Match(context.Background(), "hello")
	if err != nil || result.Matched {
		t.Fatalf("空向量库应降级为未命中: result=%+v err=%v", result, err)
	}

	// 未配置语义匹配依赖 -> 未命中且不报错
	m = newTestMatcher(store, nil, nil, 0.77)
	result, err = m.Match(context.Background(), "hello")
	if err != nil || result.Matched {
		t.Fatalf("依赖缺失应降级为未命中: result=%+v err=%v", result, err)
	}
}

func TestMatchBlankQuestion(t *testing.T) {
	m := newTestMatcher(&fakeStore{data: map[string]string{"": "never"}}, nil, nil, 0.77)
	result, err := m.Match(context.Background(), "   ")
	if err != nil || result.Matched {
		t.Fatalf("空白问题不应命中: result=%+v err=%v", result, err)
	}
}
