package model

import (
	"errors"
)

// KnowledgeNode is a typed vertex in an agent's knowledge graph.
type KnowledgeNode struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

// KnowledgeEdge is a directed, labeled connection between two nodes.
type KnowledgeEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

// KnowledgeGraph holds the nodes and edges accumulated for an agent store.
type KnowledgeGraph struct {
	Nodes []KnowledgeNode `json:"nodes"`
	Edges []KnowledgeEdge `json:"edges"`
}

// Validate ensures the node definition is usable.
func (n KnowledgeNode) Validate() error {
	if n.ID == "" {
		return errors.New("knowledge node id is empty")
	}
	if n.Label == "" {
		return errors.New("knowledge node label is empty")
	}
	return nil
}

// Validate ensures the edge names both endpoints and carries a label.
// Self-referential edges are allowed.
func (e KnowledgeEdge) Validate() error {
	if e.Source == "" || e.Target == "" {
		return errors.New("knowledge edge endpoint is empty")
	}
	if e.Label == "" {
		return errors.New("knowledge edge label is empty")
	}
	return nil
}

// HasNode reports whether a node with the given id exists in the graph.
func (g KnowledgeGraph) HasNode(id string) bool {
	for _, n := range g.Nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}
