package metrics

const Namespace = "cyclekeeper"

const (
	CacheTypeRedis  = "redis"
	CacheTypeMemory = "memory"
)

const (
	CacheOperationTypeGet    = "get"
	CacheOperationTypeSet    = "set"
	CacheOperationTypeDelete = "delete"
)
