package ir

import (
	"encoding/json"
	"fmt"
)

/*
nodeIDString renders a NodeID as a stable "nodeN" string, N being the
node's monotonic id within its module.
*/
func nodeIDString(id NodeID) string {
	return fmt.Sprintf("node%d", id)
}

/*
ToJSONObject renders this Module as a plain-map document:
`{ module: {source, body:[id], metadata}, nodes: {id: {kind, ...}} }`.
A plain map, rather than a typed struct per node kind, keeps one
(de)serialization path for every node shape.
*/
func (m *Module) ToJSONObject() map[string]interface{} {
	body := make([]string, len(m.Body))
	for i, id := range m.Body {
		body[i] = nodeIDString(id)
	}

	nodes := make(map[string]interface{}, len(m.Nodes))
	for id, n := range m.Nodes {
		obj := map[string]interface{}{"kind": string(n.Kind)}
		if n.Value != "" {
			obj["value"] = n.Value
		}
		for k, v := range n.Fields {
			obj[k] = jsonifyField(v)
		}
		nodes[nodeIDString(id)] = obj
	}

	return map[string]interface{}{
		"module": map[string]interface{}{
			"source":   m.Source,
			"body":     body,
			"metadata": m.Metadata,
		},
		"nodes": nodes,
	}
}

func jsonifyField(v interface{}) interface{} {
	switch val := v.(type) {
	case NodeID:
		return nodeIDString(val)
	case []NodeID:
		out := make([]string, len(val))
		for i, id := range val {
			out[i] = nodeIDString(id)
		}
		return out
	default:
		return val
	}
}

/*
MarshalJSON serializes the module to JSON bytes. encoding/json sorts map
keys on encode, so node order in the output is deterministic without any
extra bookkeeping here.
*/
func (m *Module) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToJSONObject())
}

/*
ModuleFromJSONObject rebuilds a Module from the plain-map document
produced by ToJSONObject (or an equivalent legacy document using
"body"/"params"/"test"/"arguments" field names — those are left as-is in
Fields and resolved on read by Node's accessor methods).
*/
func ModuleFromJSONObject(doc map[string]interface{}) (*Module, error) {
	modObj, ok := doc["module"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("ir: missing module object")
	}

	m := NewModule(fmt.Sprint(modObj["source"]))

	if meta, ok := modObj["metadata"].(map[string]interface{}); ok {
		m.Metadata = meta
	}

	nodesObj, _ := doc["nodes"].(map[string]interface{})
	for idStr, raw := range nodesObj {
		nodeObj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		id := parseNodeID(idStr)
		n := &Node{ID: id, Kind: Kind(fmt.Sprint(nodeObj["kind"])), Fields: make(map[string]interface{})}
		if v, ok := nodeObj["value"]; ok {
			n.Value = fmt.Sprint(v)
		}

		for k, v := range nodeObj {
			if k == "kind" || k == "value" {
				continue
			}
			n.Fields[k] = unjsonifyField(v)
		}

		m.Nodes[id] = n
	}

	switch bodyRaw := modObj["body"].(type) {
	case []interface{}:
		for _, b := range bodyRaw {
			m.Body = append(m.Body, parseNodeID(fmt.Sprint(b)))
		}
	case []string:
		for _, b := range bodyRaw {
			m.Body = append(m.Body, parseNodeID(b))
		}
	}

	return m, nil
}

func parseNodeID(s string) NodeID {
	var n uint32
	fmt.Sscanf(s, "node%d", &n)
	return NodeID(n)
}

func unjsonifyField(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		if len(val) > 4 && val[:4] == "node" {
			return parseNodeID(val)
		}
		return val
	case []interface{}:
		ids := make([]NodeID, 0, len(val))
		allIDs := true
		for _, e := range val {
			s, ok := e.(string)
			if !ok || len(s) <= 4 || s[:4] != "node" {
				allIDs = false
				break
			}
			ids = append(ids, parseNodeID(s))
		}
		if allIDs {
			return ids
		}
		return val
	case []string:
		ids := make([]NodeID, len(val))
		for i, s := range val {
			ids[i] = parseNodeID(s)
		}
		return ids
	default:
		return val
	}
}
