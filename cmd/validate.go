package cmd

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
)

func required(field string) promptui.ValidateFunc {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validEmail(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return errors.New("email address is required")
	}
	addr, err := mail.ParseAddress(input)
	if err != nil || addr.Address != input {
		return errors.New("enter a plain email address")
	}
	return nil
}

func validGithubLink(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return errors.New("github link is required")
	}
	u, err := url.Parse(input)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("enter a full http(s) URL")
	}
	return nil
}

func validDate(input string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(input)); err != nil {
		return errors.New("use the YYYY-MM-DD format")
	}
	return nil
}

// validMoment accepts an empty value, meaning now.
func validMoment(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if _, err := time.Parse(momentLayout, input); err != nil {
		return errors.New("use the YYYY-MM-DD HH:MM format")
	}
	return nil
}
