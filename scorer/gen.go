package scorer

//go:generate mockgen -package mocks -destination mocks/mock.go github.com/ejacobg/edgraph/scorer Graph,ScoreWriter
