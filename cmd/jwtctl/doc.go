// Command jwtctl encodes, decodes and revokes compact JSON Web Tokens from the
// command line.
//
//	# Sign a payload with an HMAC secret
//	jwtctl encode --alg HS256 --secret 'My$ecretK3y' '{"user_id":"some@user.tld"}'
//
//	# Verify with an RSA public key, pinning the algorithm
//	jwtctl decode --alg RS256 --key public.pem "$TOKEN"
//
//	# Inspect a token without verifying it
//	jwtctl decode --verify=false "$TOKEN"
//
//	# Revoke a token in redis; later decodes with --redis-addr reject it
//	jwtctl revoke --redis-addr localhost:6379 "$TOKEN"
//
// Settings may also come from a YAML file passed with --config:
//
//	codec:
//	  algorithm: RS256
//	  algorithms: [RS256]
//	  issuer: https://issuer.example
//	  verify_issuer: true
//	  leeway: 30s
//	revocation:
//	  redis_addr: localhost:6379
//	  prefix: jwt:revoked
package main
