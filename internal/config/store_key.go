package config

import (
	"fmt"
)

type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// StateKey returns the Redis key holding the whole attendance state document
func (r *StoreKeyStruct) StateKey(namespace string) string {
	return fmt.Sprintf("%s:state", namespace)
}

var StoreKey = NewStoreKeyStruct()
