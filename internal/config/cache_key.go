package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AccessTokenKey returns the key under which the upstream bearer token is
// persisted. It mirrors the browser's localStorage entry of the same name.
func (r *CacheKeyStruct) AccessTokenKey() string {
	return "access_token"
}

// ScopedAccessTokenKey returns the token key for a named deployment, so one
// Redis can serve several upstream environments.
func (r *CacheKeyStruct) ScopedAccessTokenKey(scope string) string {
	if scope == "" {
		return r.AccessTokenKey()
	}
	return fmt.Sprintf("%s:access_token", scope)
}

var CacheKey = NewCacheKeyStruct()
