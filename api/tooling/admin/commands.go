package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rifuud/api/app/sdk/auth"
	"github.com/rifuud/api/business/domain/adminbus"
	"github.com/rifuud/api/business/domain/restaurantbus"
	"github.com/rifuud/api/business/domain/staffbus"
	"github.com/rifuud/api/business/types/adminrole"
	"github.com/rifuud/api/business/types/name"
	"github.com/rifuud/api/business/types/password"
	"github.com/rifuud/api/business/types/phone"
	"github.com/rifuud/api/business/types/staffrole"
	"github.com/rifuud/api/business/types/subdomain"
	"github.com/rifuud/api/business/types/username"
)

var errMissingFlags = errors.New("missing required flags")

func newFlagSet(cmd string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (t tool) createAdmin(ctx context.Context, args []string) error {
	fs := newFlagSet("create-admin", t.out)
	unameStr := fs.String("username", "", "Username (Required)")
	passStr := fs.String("password", "", "Password (Required)")
	roleStr := fs.String("role", adminrole.Admin.String(), "Role (Admin, Viewer)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *unameStr == "" || *passStr == "" {
		fs.PrintDefaults()
		return errMissingFlags
	}

	uname, err := username.ParseAdmin(*unameStr)
	if err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	role, err := adminrole.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	if role.Equal(adminrole.Root) {
		return fmt.Errorf("the root account is created by the service at startup")
	}

	pass, err := password.Admin.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	usr, err := t.adminBus.Create(ctx, adminbus.NewUser{
		Username: uname,
		Role:     role,
		Password: pass,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Fprintf(t.out, "admin created\nID: %s\nUsername: %s\nRole: %s\n", usr.ID, usr.Username, usr.Role)
	return nil
}

func (t tool) createRestaurant(ctx context.Context, args []string) error {
	fs := newFlagSet("create-restaurant", t.out)
	nameStr := fs.String("name", "", "Restaurant name (Required)")
	subStr := fs.String("subdomain", "", "Subdomain (Required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *nameStr == "" || *subStr == "" {
		fs.PrintDefaults()
		return errMissingFlags
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	sub, err := subdomain.Parse(*subStr)
	if err != nil {
		return fmt.Errorf("invalid subdomain: %w", err)
	}

	rst, err := t.restaurantBus.Create(ctx, restaurantbus.NewRestaurant{
		Name:      n,
		Subdomain: sub,
	})
	if err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}

	fmt.Fprintf(t.out, "restaurant created\nID: %s\nSubdomain: %s\n", rst.ID, rst.Subdomain)
	return nil
}

func (t tool) createUser(ctx context.Context, args []string) error {
	fs := newFlagSet("create-user", t.out)
	subStr := fs.String("subdomain", "", "Restaurant subdomain (Required)")
	unameStr := fs.String("username", "", "Username (Required)")
	passStr := fs.String("password", "", "Password (Required)")
	firstStr := fs.String("first-name", "", "First name (Required)")
	lastStr := fs.String("last-name", "", "Last name (Required)")
	phoneStr := fs.String("phone", "", "Phone")
	roleStr := fs.String("role", "", "Role (Owner, Manager, Cashier, Waiter, Chef)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *subStr == "" || *unameStr == "" || *passStr == "" || *firstStr == "" || *lastStr == "" {
		fs.PrintDefaults()
		return errMissingFlags
	}

	sub, err := subdomain.Parse(*subStr)
	if err != nil {
		return fmt.Errorf("invalid subdomain: %w", err)
	}

	uname, err := username.Parse(*unameStr)
	if err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	pass, err := password.Staff.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	first, err := name.Parse(*firstStr)
	if err != nil {
		return fmt.Errorf("invalid first name: %w", err)
	}

	last, err := name.Parse(*lastStr)
	if err != nil {
		return fmt.Errorf("invalid last name: %w", err)
	}

	ph, err := phone.ParseNull(*phoneStr)
	if err != nil {
		return fmt.Errorf("invalid phone: %w", err)
	}

	role, err := staffrole.ParseNull(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	usr, err := t.staffBus.Create(ctx, staffbus.NewUser{
		FirstName:           first,
		LastName:            last,
		Phone:               ph,
		Username:            uname,
		Password:            pass,
		Role:                role,
		RestaurantSubdomain: sub,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(t.out, "user created\nID: %s\nUsername: %s\nRestaurant: %s\n", usr.ID, usr.Username, usr.RestaurantSubdomain)
	return nil
}

func (t tool) genToken(ctx context.Context, args []string) error {
	fs := newFlagSet("gen-token", t.out)
	realmStr := fs.String("realm", "admin", "Realm (admin, staff)")
	unameStr := fs.String("username", "", "Username (Required)")
	subStr := fs.String("subdomain", "", "Restaurant subdomain (Required for staff)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *unameStr == "" {
		fs.PrintDefaults()
		return errMissingFlags
	}

	var principal any
	var realm auth.Realm

	switch *realmStr {
	case "admin":
		usr, err := t.adminBus.QueryByUsername(ctx, *unameStr)
		if err != nil {
			return fmt.Errorf("query admin: %w", err)
		}
		principal, realm = usr, auth.RealmAdmin

	case "staff":
		sub, err := subdomain.Parse(*subStr)
		if err != nil {
			return fmt.Errorf("invalid subdomain: %w", err)
		}

		usr, err := t.staffBus.QueryByUsername(ctx, sub, *unameStr)
		if err != nil {
			return fmt.Errorf("query user: %w", err)
		}
		principal, realm = usr, auth.RealmStaff

	default:
		return fmt.Errorf("unknown realm: %s", *realmStr)
	}

	token, err := t.auth.GenerateToken(realm, principal)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Fprintln(t.out, token)
	return nil
}

func hashPassword(out io.Writer, args []string) error {
	fs := newFlagSet("hash-password", out)
	policyStr := fs.String("policy", "admin", "Password policy (admin, staff)")
	passStr := fs.String("password", "", "Password (Required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *passStr == "" {
		fs.PrintDefaults()
		return errMissingFlags
	}

	var policy password.Policy

	switch *policyStr {
	case "admin":
		policy = password.Admin
	case "staff":
		policy = password.Staff
	default:
		return fmt.Errorf("unknown policy: %s", *policyStr)
	}

	if _, err := policy.Parse(*passStr); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	fmt.Fprintln(out, policy.Hash(*passStr))
	return nil
}
