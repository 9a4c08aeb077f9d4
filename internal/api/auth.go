package api

import (
	"fmt"
	"strings"
)

// Login exchanges credentials for an access token.
func (c *Client) Login(email, password string) (*LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	data, err := c.post("/auth/login", LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeOne[LoginResponse](data)
}
