package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/vanshika-srivastava/coretest/internal/httpclient"
	"github.com/vanshika-srivastava/coretest/internal/theme"
)

// RequestCmd sends one JSON request to the running server
type RequestCmd struct {
	Get  RequestGetCmd  `cmd:"get" help:"Send a GET request"`
	Post RequestPostCmd `cmd:"post" help:"Send a POST request with a JSON body"`
}

// RequestFlags are shared by get and post
type RequestFlags struct {
	APIKey     string `help:"Value of the api-key header"`
	CDIVersion string `help:"Value of the cdi-version header" default:"2.12" name:"cdi-version"`
	Path       string `arg:"" help:"Request path, e.g. /recipe/session"`
	RID        string `help:"Value of the rid header" name:"rid"`
}

func (f RequestFlags) request() httpclient.Request {
	return httpclient.Request{
		APIKey:     f.APIKey,
		CDIVersion: f.CDIVersion,
		Path:       f.Path,
		RID:        f.RID,
	}
}

// RequestGetCmd sends a GET
type RequestGetCmd struct {
	RequestFlags
	Param map[string]string `help:"Query parameter as key=value (repeatable)" short:"p"`
}

// RequestPostCmd sends a POST
type RequestPostCmd struct {
	RequestFlags
	Body string `help:"JSON request body" default:"{}"`
}

// Run executes the get command
func (r *RequestGetCmd) Run(cli *CLI) error {
	client := httpclient.New(cli.Container.Settings.ServerURL)
	resp, err := client.GetJSON(context.Background(), r.request(), r.Param)
	return printResponse(resp, err)
}

// Run executes the post command
func (r *RequestPostCmd) Run(cli *CLI) error {
	var body any
	if err := json.Unmarshal([]byte(r.Body), &body); err != nil {
		return fmt.Errorf("invalid --body: %w", err)
	}
	client := httpclient.New(cli.Container.Settings.ServerURL)
	resp, err := client.PostJSON(context.Background(), r.request(), body)
	return printResponse(resp, err)
}

func printResponse(resp map[string]any, err error) error {
	var respErr *httpclient.ResponseError
	if errors.As(err, &respErr) {
		fmt.Fprintln(os.Stderr, theme.ErrorStyle.Render(fmt.Sprintf("HTTP %d", respErr.StatusCode)))
		fmt.Println(respErr.Body)
		return err
	}
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
