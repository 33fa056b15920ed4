package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"GogDB/app/common/consts/biz"
	"GogDB/app/common/util"
)

// Mints an admin token for POST /api/admin/rebuild.
// Usage:
//
//	go run ./tools/admintoken -secret "$ACCESS_SECRET" -sub ops
func main() {
	secret := flag.String("secret", os.Getenv("ACCESS_SECRET"), "AdminAuth.AccessSecret of the index api")
	subject := flag.String("sub", "admin", "token subject, recorded as requested_by on rebuild tasks")
	ttl := flag.Duration("ttl", biz.AdminTokenExpire, "token lifetime")
	flag.Parse()

	token, expireAt, err := util.SignAdminToken(*secret, *subject, biz.ADMIN_ROLE, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Fprintf(os.Stderr, "expires at %s\n", expireAt.Format("2006-01-02 15:04:05"))
	fmt.Println(token)
}
