package qdrantdb

import (
	"github.com/qdrant/go-client/qdrant"
)

type TourVectorClient struct {
	Client *qdrant.Client
	dims   uint64
}

func NewClient(host string, port int, dims int) (*TourVectorClient, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port, // gRPC port
	})
	if err != nil {
		return nil, err
	}
	return &TourVectorClient{Client: client, dims: uint64(dims)}, nil
}
