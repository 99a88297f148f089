// Package redis connects to Redis with go-redis and answers the existsIn and
// notExistsIn rules of the check package from sets.
//
//	client, err := redis.Connect(ctx, cfg)
//	codes := redis.NewSetLookup(client, cfg.KeyPrefix)
//	_ = codes.Add(ctx, "coupons", "WELCOME10")
//
//	check.Body("coupon").Optional().ExistsIn(codes, "coupons")
package redis
