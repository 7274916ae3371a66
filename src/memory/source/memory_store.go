package source

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/alpkeskin/gotoon"
	"github.com/google/uuid"

	"github.com/recall-labs/go-recall/src/memory/model"
)

const (
	maxMemoryContentLen = 10000
	maxStoredMemories   = 1000
	maxGraphNodes       = 500
	maxGraphEdges       = 1000
)

// MemoryEntry is one remembered item attributed to a named agent.
type MemoryEntry struct {
	ID         string  `json:"id"`
	Agent      string  `json:"agent"`
	Content    string  `json:"content"`
	Timestamp  int64   `json:"timestamp"`
	Importance float64 `json:"importance"`
}

type storeDocument struct {
	Memories []MemoryEntry        `json:"memories"`
	Graph    model.KnowledgeGraph `json:"graph"`
}

// MemoryStore persists agent memories and a knowledge graph in a single
// JSON file. Every mutation is a read-modify-write cycle under one lock so
// concurrent writers cannot lose entries.
type MemoryStore struct {
	mu   sync.Mutex
	path string
}

func NewMemoryStore(path string) *MemoryStore {
	return &MemoryStore{path: path}
}

// read returns the stored document. A missing or unreadable file reads as
// an empty store; only write failures surface as errors.
func (s *MemoryStore) read() storeDocument {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return storeDocument{}
	}
	var doc storeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return storeDocument{}
	}
	return doc
}

func (s *MemoryStore) write(doc storeDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &ResourceError{Err: err}
	}
	return nil
}

// AddMemory records a new entry for the agent and returns it. Importance is
// clamped to [0, 1]; once the store exceeds its capacity the oldest entries
// are dropped.
func (s *MemoryStore) AddMemory(agent, content string, importance float64) (MemoryEntry, error) {
	if agent == "" || content == "" {
		return MemoryEntry{}, errors.New("agent and content cannot be empty")
	}
	if len(content) > maxMemoryContentLen {
		return MemoryEntry{}, fmt.Errorf("content too long (max %d chars)", maxMemoryContentLen)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	entry := MemoryEntry{
		ID:         "mem_" + uuid.NewString(),
		Agent:      agent,
		Content:    content,
		Timestamp:  time.Now().UnixMilli(),
		Importance: math.Max(0, math.Min(1, importance)),
	}
	doc.Memories = append(doc.Memories, entry)
	if len(doc.Memories) > maxStoredMemories {
		sort.SliceStable(doc.Memories, func(i, j int) bool {
			return doc.Memories[i].Timestamp > doc.Memories[j].Timestamp
		})
		doc.Memories = doc.Memories[:maxStoredMemories]
	}
	if err := s.write(doc); err != nil {
		return MemoryEntry{}, err
	}
	return entry, nil
}

// AgentMemories returns the agent's entries sorted by importance, most
// recent first among ties, truncated to topK. Agent matching ignores case.
func (s *MemoryStore) AgentMemories(agent string, topK int) []MemoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	matched := make([]MemoryEntry, 0, len(doc.Memories))
	for _, m := range doc.Memories {
		if strings.EqualFold(m.Agent, agent) {
			matched = append(matched, m)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Importance != matched[j].Importance {
			return matched[i].Importance > matched[j].Importance
		}
		return matched[i].Timestamp > matched[j].Timestamp
	})
	if topK >= 0 && len(matched) > topK {
		matched = matched[:topK]
	}
	return matched
}

// ClearAgentMemories removes every entry for the agent and reports how many
// were dropped.
func (s *MemoryStore) ClearAgentMemories(agent string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	kept := make([]MemoryEntry, 0, len(doc.Memories))
	for _, m := range doc.Memories {
		if !strings.EqualFold(m.Agent, agent) {
			kept = append(kept, m)
		}
	}
	removed := len(doc.Memories) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	doc.Memories = kept
	if err := s.write(doc); err != nil {
		return 0, err
	}
	return removed, nil
}

// Graph returns the current knowledge graph.
func (s *MemoryStore) Graph() model.KnowledgeGraph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Graph
}

// AddNode inserts a knowledge graph node. Duplicate ids are rejected and the
// graph keeps at most maxGraphNodes nodes.
func (s *MemoryStore) AddNode(node model.KnowledgeNode) error {
	if err := node.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	if doc.Graph.HasNode(node.ID) {
		return fmt.Errorf("node %q already exists", node.ID)
	}
	doc.Graph.Nodes = append(doc.Graph.Nodes, node)
	if len(doc.Graph.Nodes) > maxGraphNodes {
		doc.Graph.Nodes = doc.Graph.Nodes[:maxGraphNodes]
	}
	return s.write(doc)
}

// AddEdge inserts an edge; both endpoints must already exist. The graph
// keeps at most maxGraphEdges edges.
func (s *MemoryStore) AddEdge(edge model.KnowledgeEdge) error {
	if err := edge.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.read()
	if !doc.Graph.HasNode(edge.Source) {
		return fmt.Errorf("edge source %q does not exist", edge.Source)
	}
	if !doc.Graph.HasNode(edge.Target) {
		return fmt.Errorf("edge target %q does not exist", edge.Target)
	}
	doc.Graph.Edges = append(doc.Graph.Edges, edge)
	if len(doc.Graph.Edges) > maxGraphEdges {
		doc.Graph.Edges = doc.Graph.Edges[:maxGraphEdges]
	}
	return s.write(doc)
}
