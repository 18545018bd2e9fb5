package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/usermgmt/internal/client/api"
)

func (a *App) Register(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	result, err := a.client.Register(ctx, userName, email, string(password))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if !result.Succeeded {
		for _, reason := range result.Reasons {
			printlnFn(reason)
		}
		return nil
	}

	printlnFn("Success! You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {

	userName, err := GetSimpleText(a.reader, "Enter user name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	token, err := a.client.Login(ctx, userName, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			printlnFn("Invalid user name or password")
			return nil
		}
		printlnFn(err.Error())
		return err
	}

	a.token = token
	a.userName = userName
	printlnFn("Logged in!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.userName = ""
	printlnFn("Logged out")
	return nil
}
