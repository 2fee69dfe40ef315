package command

import "github.com/vkeydb/vkeydb/internal/acl"

// SetGrammar demonstrates the full combinator grammar on SET's option
// set (NX/XX mutually exclusive, EX/PX/EXAT/PXAT/KEEPTTL mutually
// exclusive, trailing GET flag) — the canonical case the spec's
// argument-binding description has in mind.
var SetGrammar = Grammar{
	Positional("key", KindBytes),
	Positional("value", KindBytes),
	OneOf("existence", OptToken("NX"), OptToken("XX")),
	OneOf("expire",
		OptToken("EX", Positional("seconds", KindInteger)),
		OptToken("PX", Positional("millis", KindInteger)),
		OptToken("EXAT", Positional("unixSeconds", KindInteger)),
		OptToken("PXAT", Positional("unixMillis", KindInteger)),
		OptToken("KEEPTTL"),
	),
	OptToken("GET"),
}

// Default builds the registry populated with every command spec.md and
// SPEC_FULL.md name, so the executor's arity/flag/ACL/key-position
// checks (§4.G) have real metadata to consult for the whole surface this
// server implements.
func Default() *Registry {
	r := NewRegistry()
	for _, s := range specs() {
		r.Register(s)
	}
	return r
}

func keys1() KeyPositions        { return KeyPositions{First: 1, Last: 1, Step: 1} }
func keysAllTrailing() KeyPositions { return KeyPositions{First: 1, Last: -1, Step: 1} }
func noKeys() KeyPositions        { return KeyPositions{} }

func specs() []*Spec {
	read := acl.CatRead | acl.CatFast
	write := acl.CatWrite
	return []*Spec{
		// Connection / session (§4.E)
		{Name: "AUTH", Arity: Arity{1, 2}, Flags: FlagFast | FlagNoScript, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "HELLO", Arity: Arity{0, -1}, Flags: FlagFast | FlagNoScript, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "PING", Arity: Arity{0, 1}, Flags: FlagFast, Categories: acl.CatConnection | acl.CatFast, Keys: noKeys()},
		{Name: "ECHO", Arity: Arity{1, 1}, Flags: FlagFast, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "QUIT", Arity: Arity{0, 0}, Flags: FlagFast | FlagNoScript, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "RESET", Arity: Arity{0, 0}, Flags: FlagFast | FlagNoScript, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "SELECT", Arity: Arity{1, 1}, Flags: FlagFast | FlagLoading, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "CLIENT", Subcommand: "LIST", Arity: Arity{0, -1}, Flags: FlagAdmin, Categories: acl.CatAdmin, Keys: noKeys()},
		{Name: "CLIENT", Subcommand: "INFO", Arity: Arity{0, 0}, Flags: FlagFast, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "CLIENT", Subcommand: "GETNAME", Arity: Arity{0, 0}, Flags: FlagFast, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "CLIENT", Subcommand: "SETNAME", Arity: Arity{1, 1}, Flags: FlagFast, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "CLIENT", Subcommand: "NO-EVICT", Arity: Arity{1, 1}, Flags: FlagFast, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "CLIENT", Subcommand: "NO-TOUCH", Arity: Arity{1, 1}, Flags: FlagFast, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "CLIENT", Subcommand: "KILL", Arity: Arity{1, -1}, Flags: FlagAdmin, Categories: acl.CatAdmin, Keys: noKeys()},
		{Name: "CLIENT", Subcommand: "REPLY", Arity: Arity{1, 1}, Flags: FlagFast, Categories: acl.CatConnection, Keys: noKeys()},

		// Transactions (§4.E/§4.G)
		{Name: "MULTI", Arity: Arity{0, 0}, Flags: FlagFast | FlagNoScript, Categories: acl.CatTransaction, Keys: noKeys()},
		{Name: "EXEC", Arity: Arity{0, 0}, Flags: FlagNoScript, Categories: acl.CatTransaction, Keys: noKeys()},
		{Name: "DISCARD", Arity: Arity{0, 0}, Flags: FlagFast | FlagNoScript, Categories: acl.CatTransaction, Keys: noKeys()},
		{Name: "WATCH", Arity: Arity{1, -1}, Flags: FlagFast | FlagNoScript, Categories: acl.CatTransaction, Keys: keysAllTrailing()},
		{Name: "UNWATCH", Arity: Arity{0, 0}, Flags: FlagFast | FlagNoScript, Categories: acl.CatTransaction, Keys: noKeys()},

		// Generic keyspace (§4.C/§4.D)
		{Name: "DEL", Arity: Arity{1, -1}, Flags: FlagWrite, Categories: write | acl.CatKeyspace, Keys: keysAllTrailing()},
		{Name: "EXISTS", Arity: Arity{1, -1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatKeyspace, Keys: keysAllTrailing()},
		{Name: "TYPE", Arity: Arity{1, 1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatKeyspace, Keys: keys1()},
		{Name: "RENAME", Arity: Arity{2, 2}, Flags: FlagWrite, Categories: write | acl.CatKeyspace, Keys: KeyPositions{First: 1, Last: 2, Step: 1}},
		{Name: "EXPIRE", Arity: Arity{2, 3}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatKeyspace, Keys: keys1()},
		{Name: "PEXPIRE", Arity: Arity{2, 3}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatKeyspace, Keys: keys1()},
		{Name: "EXPIREAT", Arity: Arity{2, 3}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatKeyspace, Keys: keys1()},
		{Name: "PEXPIREAT", Arity: Arity{2, 3}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatKeyspace, Keys: keys1()},
		{Name: "PERSIST", Arity: Arity{1, 1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatKeyspace, Keys: keys1()},
		{Name: "TTL", Arity: Arity{1, 1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatKeyspace, Keys: keys1()},
		{Name: "PTTL", Arity: Arity{1, 1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatKeyspace, Keys: keys1()},
		{Name: "TOUCH", Arity: Arity{1, -1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatKeyspace, Keys: keysAllTrailing()},
		{Name: "KEYS", Arity: Arity{1, 1}, Flags: FlagReadonly, Categories: read | acl.CatDangerous, Keys: noKeys()},
		{Name: "SCAN", Arity: Arity{1, -1}, Flags: FlagReadonly, Categories: read | acl.CatKeyspace, Keys: noKeys()},
		{Name: "DBSIZE", Arity: Arity{0, 0}, Flags: FlagReadonly | FlagFast, Categories: read, Keys: noKeys()},
		{Name: "FLUSHDB", Arity: Arity{0, 1}, Flags: FlagWrite, Categories: write | acl.CatDangerous, Keys: noKeys()},
		{Name: "FLUSHALL", Arity: Arity{0, 1}, Flags: FlagWrite, Categories: write | acl.CatDangerous, Keys: noKeys()},
		{Name: "DUMP", Arity: Arity{1, 1}, Flags: FlagReadonly, Categories: read, Keys: keys1()},
		{Name: "RESTORE", Arity: Arity{3, -1}, Flags: FlagWrite, Categories: write | acl.CatDangerous, Keys: keys1()},

		// Server / config (§4.D)
		{Name: "CONFIG", Subcommand: "GET", Arity: Arity{1, -1}, Flags: FlagAdmin, Categories: acl.CatAdmin, Keys: noKeys()},
		{Name: "CONFIG", Subcommand: "SET", Arity: Arity{2, -1}, Flags: FlagAdmin, Categories: acl.CatAdmin, Keys: noKeys()},
		{Name: "INFO", Arity: Arity{0, 1}, Flags: FlagFast, Categories: acl.CatSlow, Keys: noKeys()},
		{Name: "COMMAND", Arity: Arity{0, -1}, Flags: FlagLoading, Categories: acl.CatConnection, Keys: noKeys()},
		{Name: "MONITOR", Arity: Arity{0, 0}, Flags: FlagAdmin | FlagNoScript, Categories: acl.CatAdmin, Keys: noKeys()},

		// ACL (§1, §4.D, §9)
		{Name: "ACL", Subcommand: "WHOAMI", Arity: Arity{0, 0}, Flags: FlagFast, Categories: acl.CatAdmin, Keys: noKeys()},
		{Name: "ACL", Subcommand: "LIST", Arity: Arity{0, 0}, Flags: FlagAdmin, Categories: acl.CatAdmin, Keys: noKeys()},
		{Name: "ACL", Subcommand: "CAT", Arity: Arity{0, 1}, Flags: FlagAdmin, Categories: acl.CatAdmin, Keys: noKeys()},
		{Name: "ACL", Subcommand: "SETUSER", Arity: Arity{1, -1}, Flags: FlagAdmin, Categories: acl.CatAdmin | acl.CatDangerous, Keys: noKeys()},
		{Name: "ACL", Subcommand: "DELUSER", Arity: Arity{1, -1}, Flags: FlagAdmin, Categories: acl.CatAdmin | acl.CatDangerous, Keys: noKeys()},

		// String (§4.B)
		{Name: "GET", Arity: Arity{1, 1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatString, Keys: keys1()},
		{Name: "SET", Arity: Arity{2, -1}, Flags: FlagWrite, Categories: write | acl.CatString, Keys: keys1()},
		{Name: "MGET", Arity: Arity{1, -1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatString, Keys: keysAllTrailing()},
		{Name: "MSET", Arity: Arity{2, -1}, Flags: FlagWrite, Categories: write | acl.CatString, Keys: KeyPositions{First: 1, Last: -1, Step: 2}},
		{Name: "APPEND", Arity: Arity{2, 2}, Flags: FlagWrite, Categories: write | acl.CatString, Keys: keys1()},
		{Name: "STRLEN", Arity: Arity{1, 1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatString, Keys: keys1()},
		{Name: "GETRANGE", Arity: Arity{3, 3}, Flags: FlagReadonly, Categories: read | acl.CatString, Keys: keys1()},
		{Name: "SETRANGE", Arity: Arity{3, 3}, Flags: FlagWrite, Categories: write | acl.CatString, Keys: keys1()},
		{Name: "INCR", Arity: Arity{1, 1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatString, Keys: keys1()},
		{Name: "DECR", Arity: Arity{1, 1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatString, Keys: keys1()},
		{Name: "INCRBY", Arity: Arity{2, 2}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatString, Keys: keys1()},
		{Name: "DECRBY", Arity: Arity{2, 2}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatString, Keys: keys1()},
		{Name: "INCRBYFLOAT", Arity: Arity{2, 2}, Flags: FlagWrite, Categories: write | acl.CatString, Keys: keys1()},
		{Name: "BITCOUNT", Arity: Arity{1, 3}, Flags: FlagReadonly, Categories: read | acl.CatString, Keys: keys1()},
		{Name: "BITPOS", Arity: Arity{2, -1}, Flags: FlagReadonly, Categories: read | acl.CatString, Keys: keys1()},
		{Name: "BITOP", Arity: Arity{3, -1}, Flags: FlagWrite, Categories: write | acl.CatString, Keys: keysAllTrailing()},

		// List (§4.B)
		{Name: "LPUSH", Arity: Arity{2, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatList, Keys: keys1()},
		{Name: "RPUSH", Arity: Arity{2, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatList, Keys: keys1()},
		{Name: "LPOP", Arity: Arity{1, 2}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatList, Keys: keys1()},
		{Name: "RPOP", Arity: Arity{1, 2}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatList, Keys: keys1()},
		{Name: "LLEN", Arity: Arity{1, 1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatList, Keys: keys1()},
		{Name: "LRANGE", Arity: Arity{3, 3}, Flags: FlagReadonly, Categories: read | acl.CatList, Keys: keys1()},
		{Name: "LINDEX", Arity: Arity{2, 2}, Flags: FlagReadonly, Categories: read | acl.CatList, Keys: keys1()},
		{Name: "LSET", Arity: Arity{3, 3}, Flags: FlagWrite, Categories: write | acl.CatList, Keys: keys1()},
		{Name: "LINSERT", Arity: Arity{4, 4}, Flags: FlagWrite, Categories: write | acl.CatList, Keys: keys1()},
		{Name: "LREM", Arity: Arity{3, 3}, Flags: FlagWrite, Categories: write | acl.CatList, Keys: keys1()},
		{Name: "LTRIM", Arity: Arity{3, 3}, Flags: FlagWrite, Categories: write | acl.CatList, Keys: keys1()},
		{Name: "LMOVE", Arity: Arity{4, 4}, Flags: FlagWrite, Categories: write | acl.CatList, Keys: KeyPositions{First: 1, Last: 2, Step: 1}},
		{Name: "BLPOP", Arity: Arity{2, -1}, Flags: FlagWrite | FlagBlocking | FlagNoScript, Categories: write | acl.CatList | acl.CatBlocking, Keys: keysAllTrailing()},
		{Name: "BRPOP", Arity: Arity{2, -1}, Flags: FlagWrite | FlagBlocking | FlagNoScript, Categories: write | acl.CatList | acl.CatBlocking, Keys: keysAllTrailing()},
		{Name: "BLMOVE", Arity: Arity{5, 5}, Flags: FlagWrite | FlagBlocking | FlagNoScript, Categories: write | acl.CatList | acl.CatBlocking, Keys: KeyPositions{First: 1, Last: 2, Step: 1}},

		// Hash (§4.B)
		{Name: "HSET", Arity: Arity{3, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatHash, Keys: keys1()},
		{Name: "HGET", Arity: Arity{2, 2}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatHash, Keys: keys1()},
		{Name: "HDEL", Arity: Arity{2, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatHash, Keys: keys1()},
		{Name: "HEXISTS", Arity: Arity{2, 2}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatHash, Keys: keys1()},
		{Name: "HINCRBY", Arity: Arity{3, 3}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatHash, Keys: keys1()},
		{Name: "HINCRBYFLOAT", Arity: Arity{3, 3}, Flags: FlagWrite, Categories: write | acl.CatHash, Keys: keys1()},
		{Name: "HKEYS", Arity: Arity{1, 1}, Flags: FlagReadonly, Categories: read | acl.CatHash, Keys: keys1()},
		{Name: "HVALS", Arity: Arity{1, 1}, Flags: FlagReadonly, Categories: read | acl.CatHash, Keys: keys1()},
		{Name: "HGETALL", Arity: Arity{1, 1}, Flags: FlagReadonly, Categories: read | acl.CatHash, Keys: keys1()},
		{Name: "HLEN", Arity: Arity{1, 1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatHash, Keys: keys1()},
		{Name: "HRANDFIELD", Arity: Arity{1, 3}, Flags: FlagReadonly, Categories: read | acl.CatHash, Keys: keys1()},
		{Name: "HSCAN", Arity: Arity{2, -1}, Flags: FlagReadonly, Categories: read | acl.CatHash, Keys: keys1()},

		// Set (§4.B)
		{Name: "SADD", Arity: Arity{2, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatSet, Keys: keys1()},
		{Name: "SREM", Arity: Arity{2, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatSet, Keys: keys1()},
		{Name: "SISMEMBER", Arity: Arity{2, 2}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatSet, Keys: keys1()},
		{Name: "SMEMBERS", Arity: Arity{1, 1}, Flags: FlagReadonly, Categories: read | acl.CatSet, Keys: keys1()},
		{Name: "SCARD", Arity: Arity{1, 1}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatSet, Keys: keys1()},
		{Name: "SRANDMEMBER", Arity: Arity{1, 2}, Flags: FlagReadonly, Categories: read | acl.CatSet, Keys: keys1()},
		{Name: "SUNION", Arity: Arity{1, -1}, Flags: FlagReadonly, Categories: read | acl.CatSet, Keys: keysAllTrailing()},
		{Name: "SINTER", Arity: Arity{1, -1}, Flags: FlagReadonly, Categories: read | acl.CatSet, Keys: keysAllTrailing()},
		{Name: "SDIFF", Arity: Arity{1, -1}, Flags: FlagReadonly, Categories: read | acl.CatSet, Keys: keysAllTrailing()},
		{Name: "SUNIONSTORE", Arity: Arity{2, -1}, Flags: FlagWrite, Categories: write | acl.CatSet, Keys: keysAllTrailing()},
		{Name: "SINTERSTORE", Arity: Arity{2, -1}, Flags: FlagWrite, Categories: write | acl.CatSet, Keys: keysAllTrailing()},
		{Name: "SDIFFSTORE", Arity: Arity{2, -1}, Flags: FlagWrite, Categories: write | acl.CatSet, Keys: keysAllTrailing()},

		// SortedSet (§4.B)
		{Name: "ZADD", Arity: Arity{3, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZSCORE", Arity: Arity{2, 2}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZREM", Arity: Arity{2, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZRANK", Arity: Arity{2, 2}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZREVRANK", Arity: Arity{2, 2}, Flags: FlagReadonly | FlagFast, Categories: read | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZRANGE", Arity: Arity{3, -1}, Flags: FlagReadonly, Categories: read | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZRANGEBYSCORE", Arity: Arity{3, -1}, Flags: FlagReadonly, Categories: read | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZRANGEBYLEX", Arity: Arity{3, -1}, Flags: FlagReadonly, Categories: read | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZINCRBY", Arity: Arity{3, 3}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZPOPMIN", Arity: Arity{1, 2}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZPOPMAX", Arity: Arity{1, 2}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatSortedSet, Keys: keys1()},
		{Name: "ZUNIONSTORE", Arity: Arity{3, -1}, Flags: FlagWrite, Categories: write | acl.CatSortedSet, Keys: keysAllTrailing()},
		{Name: "ZINTERSTORE", Arity: Arity{3, -1}, Flags: FlagWrite, Categories: write | acl.CatSortedSet, Keys: keysAllTrailing()},

		// Stream (§4.B)
		{Name: "XADD", Arity: Arity{4, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatStream, Keys: keys1()},
		{Name: "XRANGE", Arity: Arity{3, -1}, Flags: FlagReadonly, Categories: read | acl.CatStream, Keys: keys1()},
		{Name: "XREVRANGE", Arity: Arity{3, -1}, Flags: FlagReadonly, Categories: read | acl.CatStream, Keys: keys1()},
		{Name: "XREAD", Arity: Arity{3, -1}, Flags: FlagReadonly | FlagBlocking, Categories: read | acl.CatStream | acl.CatBlocking, Keys: noKeys()},
		{Name: "XGROUP", Subcommand: "CREATE", Arity: Arity{4, -1}, Flags: FlagWrite, Categories: write | acl.CatStream, Keys: keys1()},
		{Name: "XGROUP", Subcommand: "SETID", Arity: Arity{3, -1}, Flags: FlagWrite, Categories: write | acl.CatStream, Keys: keys1()},
		{Name: "XGROUP", Subcommand: "DESTROY", Arity: Arity{2, 2}, Flags: FlagWrite, Categories: write | acl.CatStream, Keys: keys1()},
		{Name: "XREADGROUP", Arity: Arity{6, -1}, Flags: FlagWrite | FlagBlocking, Categories: write | acl.CatStream | acl.CatBlocking, Keys: noKeys()},
		{Name: "XACK", Arity: Arity{3, -1}, Flags: FlagWrite | FlagFast, Categories: write | acl.CatStream, Keys: keys1()},
		{Name: "XCLAIM", Arity: Arity{5, -1}, Flags: FlagWrite, Categories: write | acl.CatStream, Keys: keys1()},

		// Pub/Sub (§4.H)
		{Name: "SUBSCRIBE", Arity: Arity{1, -1}, Flags: FlagPubSub | FlagNoScript, Categories: acl.CatPubSub, Keys: noKeys()},
		{Name: "UNSUBSCRIBE", Arity: Arity{0, -1}, Flags: FlagPubSub | FlagNoScript, Categories: acl.CatPubSub, Keys: noKeys()},
		{Name: "PSUBSCRIBE", Arity: Arity{1, -1}, Flags: FlagPubSub | FlagNoScript, Categories: acl.CatPubSub, Keys: noKeys()},
		{Name: "PUNSUBSCRIBE", Arity: Arity{0, -1}, Flags: FlagPubSub | FlagNoScript, Categories: acl.CatPubSub, Keys: noKeys()},
		{Name: "PUBLISH", Arity: Arity{2, 2}, Flags: FlagPubSub | FlagFast, Categories: acl.CatPubSub, Keys: noKeys()},
		{Name: "PUBSUB", Arity: Arity{1, -1}, Flags: FlagPubSub, Categories: acl.CatPubSub, Keys: noKeys()},

		// Blocking / misc (§4.I)
		{Name: "WAIT", Arity: Arity{2, 2}, Flags: FlagBlocking, Categories: acl.CatSlow | acl.CatBlocking, Keys: noKeys()},
	}
}
