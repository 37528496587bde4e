package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type client struct {
	rest *resty.Client
}

func newClient() *client {
	c := resty.New().
		SetBaseURL(apiFlag).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	if cookieFlag != "" {
		c.SetHeader("Cookie", "bb_session="+cookieFlag)
	}
	return &client{rest: c}
}

func (c *client) get(path string) ([]byte, error) {
	resp, err := c.rest.R().Get(path)
	return checkResponse(resp, err)
}

func (c *client) post(path string, payload interface{}) ([]byte, error) {
	resp, err := c.rest.R().SetBody(payload).Post(path)
	return checkResponse(resp, err)
}

func (c *client) put(path string) ([]byte, error) {
	resp, err := c.rest.R().Put(path)
	return checkResponse(resp, err)
}

func (c *client) delete(path string) ([]byte, error) {
	resp, err := c.rest.R().Delete(path)
	return checkResponse(resp, err)
}

func checkResponse(resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}
