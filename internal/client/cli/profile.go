package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/usermgmt/internal/client/api"
)

func (a *App) Profile(ctx context.Context) error {

	profile, err := a.client.Profile(ctx, a.token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			printlnFn("Session expired, please log in again")
			a.token = ""
			a.userName = ""
			return nil
		}
		printlnFn(err.Error())
		return err
	}

	printlnFn("User name:", profile.Username)
	printlnFn("Email:", profile.Email)
	if profile.AvatarURL != "" {
		printlnFn("Avatar:", profile.AvatarURL)
		printlnFn("Uploaded:", profile.AvatarUploadedAt)
	}
	return nil
}

func (a *App) Upload(ctx context.Context) error {

	path, err := GetSimpleText(a.reader, "Enter path to the avatar file", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	defer file.Close()

	assetRef, err := a.client.UploadAvatar(ctx, a.token, filepath.Base(path), file, time.Now())
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			printlnFn("Session expired, please log in again")
			a.token = ""
			a.userName = ""
			return nil
		}
		printlnFn(err.Error())
		return err
	}

	printlnFn("Uploaded as", assetRef)
	return nil
}
