package models

// NodeAdjacency holds the encoded out-edges of one node for one edge label.
type NodeAdjacency struct {
	NodeID    int64  `gorm:"column:node_id;primaryKey;autoIncrement:false"`
	EdgeLabel string `gorm:"column:edge_label;size:64;primaryKey"`
	Adjacency []byte `gorm:"column:adjacency;type:bytea"`
	OutDegree int    `gorm:"column:out_degree"`
}

func (NodeAdjacency) TableName() string {
	return "graph_adjacency"
}
