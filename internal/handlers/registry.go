package handlers

import "github.com/vkeydb/vkeydb/internal/store"

// Default builds the dispatch table the executor consults once it has
// resolved a command.Spec: keys mirror command.Registry's own key()
// convention ("NAME" for plain commands, "NAME SUB" for the subcommand
// forms), so the executor can look a handler up with the same name/
// subcommand pair it used to look up the Spec.
func Default() map[string]Handler {
	return map[string]Handler{
		// Connection / session
		"AUTH":  hAuth,
		"HELLO": hHello,
		"PING":  hPing,
		"ECHO":  hEcho,
		"QUIT":  hQuit,
		"RESET": hReset,
		"SELECT": hSelect,
		"CLIENT LIST":     hClientList,
		"CLIENT INFO":     hClientInfo,
		"CLIENT GETNAME":  hClientGetName,
		"CLIENT SETNAME":  hClientSetName,
		"CLIENT NO-EVICT": hClientNoEvict,
		"CLIENT NO-TOUCH": hClientNoTouch,
		"CLIENT KILL":     hClientKill,
		"CLIENT REPLY":    hClientReply,

		// Transactions
		"MULTI":   hMulti,
		"DISCARD": hDiscard,
		"WATCH":   hWatch,
		"UNWATCH": hUnwatch,

		// Generic keyspace
		"DEL":      hDel,
		"EXISTS":   hExists,
		"TYPE":     hType,
		"RENAME":   hRename,
		"EXPIRE":   hExpire,
		"PEXPIRE":  hPExpire,
		"EXPIREAT": hExpireAt,
		"PEXPIREAT": hPExpireAt,
		"PERSIST":  hPersist,
		"TTL":      hTTL,
		"PTTL":     hPTTL,
		"TOUCH":    hTouch,
		"KEYS":     hKeys,
		"SCAN":     hScan,
		"DBSIZE":   hDBSize,
		"FLUSHDB":  hFlushDB,
		"FLUSHALL": hFlushAll,
		"DUMP":     hDump,
		"RESTORE":  hRestore,

		// Server / config
		"CONFIG GET": hConfigGet,
		"CONFIG SET": hConfigSet,
		"INFO":       hInfo,
		"COMMAND":    hCommand,
		"MONITOR":    hMonitor,

		// ACL
		"ACL WHOAMI":  hACLWhoAmI,
		"ACL LIST":    hACLList,
		"ACL CAT":     hACLCat,
		"ACL SETUSER": hACLSetUser,
		"ACL DELUSER": hACLDelUser,

		// String
		"GET":         hGet,
		"SET":         hSet,
		"MGET":        hMGet,
		"MSET":        hMSet,
		"APPEND":      hAppend,
		"STRLEN":      hStrlen,
		"GETRANGE":    hGetRange,
		"SETRANGE":    hSetRange,
		"INCR":        hIncrBy(1),
		"DECR":        hIncrBy(-1),
		"INCRBY":      hIncrByN,
		"DECRBY":      hDecrByN,
		"INCRBYFLOAT": hIncrByFloat,
		"BITCOUNT":    hBitCount,
		"BITPOS":      hBitPos,
		"BITOP":       hBitOp,

		// List
		"LPUSH":  hPush(false),
		"RPUSH":  hPush(true),
		"LPOP":   hPop(false),
		"RPOP":   hPop(true),
		"LLEN":   hLLen,
		"LRANGE": hLRange,
		"LINDEX": hLIndex,
		"LSET":   hLSet,
		"LINSERT": hLInsert,
		"LREM":   hLRem,
		"LTRIM":  hLTrim,
		"LMOVE":  hLMove,
		"BLPOP":  hBPop(false),
		"BRPOP":  hBPop(true),
		"BLMOVE": hBLMove,

		// Hash
		"HSET":         hHSet,
		"HGET":         hHGet,
		"HDEL":         hHDel,
		"HEXISTS":      hHExists,
		"HINCRBY":      hHIncrBy,
		"HINCRBYFLOAT": hHIncrByFloat,
		"HKEYS":        hHKeys,
		"HVALS":        hHVals,
		"HGETALL":      hHGetAll,
		"HLEN":         hHLen,
		"HRANDFIELD":   hHRandField,
		"HSCAN":        hHScan,

		// Set
		"SADD":        hSAdd,
		"SREM":        hSRem,
		"SISMEMBER":   hSIsMember,
		"SMEMBERS":    hSMembers,
		"SCARD":       hSCard,
		"SRANDMEMBER": hSRandMember,
		"SUNION":      hSetOp(store.SUnion),
		"SINTER":      hSetOp(store.SInter),
		"SDIFF":       hSetOp(store.SDiff),
		"SUNIONSTORE": hSetOpStore(store.SUnion),
		"SINTERSTORE": hSetOpStore(store.SInter),
		"SDIFFSTORE":  hSetOpStore(store.SDiff),

		// SortedSet
		"ZADD":          hZAdd,
		"ZSCORE":        hZScore,
		"ZREM":          hZRem,
		"ZRANK":         hZRank(false),
		"ZREVRANK":      hZRank(true),
		"ZRANGE":        hZRange(false),
		"ZRANGEBYSCORE": hZRangeByScore(false),
		"ZRANGEBYLEX":   hZRangeByLex(false),
		"ZINCRBY":       hZIncrBy,
		"ZPOPMIN":       hZPop(false),
		"ZPOPMAX":       hZPop(true),
		"ZUNIONSTORE":   hZUnionStore,
		"ZINTERSTORE":   hZInterStore,

		// Stream
		"XADD":              hXAdd,
		"XRANGE":            hXRange(false),
		"XREVRANGE":         hXRange(true),
		"XREAD":             hXRead,
		"XGROUP CREATE":     hXGroupCreate,
		"XGROUP SETID":      hXGroupSetID,
		"XGROUP DESTROY":    hXGroupDestroy,
		"XREADGROUP":        hXReadGroup,
		"XACK":              hXAck,
		"XCLAIM":            hXClaim,

		// Pub/Sub
		"SUBSCRIBE":    hSubscribe,
		"UNSUBSCRIBE":  hUnsubscribe,
		"PSUBSCRIBE":   hPSubscribe,
		"PUNSUBSCRIBE": hPUnsubscribe,
		"PUBLISH":      hPublish,
		"PUBSUB":       hPubSub,

		// Blocking / misc
		"WAIT": hWait,
	}
}

// registryNames lists every top-level command name this server answers
// to COMMAND/COMMAND COUNT with, collapsing subcommand entries ("XGROUP
// CREATE", "XGROUP SETID", ...) down to their single container name so
// the count matches what COMMAND DOCS would enumerate on a real server.
func registryNames() []string {
	seen := map[string]struct{}{}
	for k := range Default() {
		name := k
		for i, r := range k {
			if r == ' ' {
				name = k[:i]
				break
			}
		}
		seen[name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	return out
}
