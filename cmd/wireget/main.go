// wireget fetches one URL with go-wirehttp and prints the response.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	wirehttp "github.com/payrail/go-wirehttp"
)

func main() {
	method := flag.String("X", "GET", "request method")
	body := flag.String("d", "", "request body")
	timeout := flag.Duration("timeout", 30*time.Second, "overall request timeout")
	insecure := flag.Bool("k", false, "skip TLS certificate validation")
	proxyURL := flag.String("proxy", "", "upstream proxy URL (http:// or socks5://)")
	showHeaders := flag.Bool("i", false, "print response headers")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: wireget [flags] URL")
		flag.PrintDefaults()
		os.Exit(2)
	}

	u, err := url.Parse(flag.Arg(0))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		fmt.Fprintf(os.Stderr, "invalid URL: %s\n", flag.Arg(0))
		os.Exit(2)
	}

	port := 80
	if u.Scheme == "https" {
		port = 443
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid port: %s\n", p)
			os.Exit(2)
		}
	}

	path := u.RequestURI()
	req := wirehttp.NewRequest(*method, u.Scheme, u.Hostname(), port, path)
	req.Body = []byte(*body)
	req.Timeout = *timeout
	req.Header.Set("User-Agent", "wireget/"+wirehttp.Version)
	req.Header.Set("Connection", "close")

	opts := wirehttp.DefaultOptions()
	opts.InsecureTLS = *insecure
	opts.ProxyURL = *proxyURL

	resp, err := wirehttp.New(opts).Do(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed [%s]: %v\n", wirehttp.GetErrorType(err), err)
		os.Exit(1)
	}

	s := resp.Summary()
	fmt.Fprintf(os.Stderr, "%s %d %s (%s)\n", resp.Proto, s.Status, s.StatusText, s.URL)
	fmt.Fprintf(os.Stderr, "timings: %s\n", resp.Metrics.String())

	if *showHeaders {
		for name, value := range resp.Headers {
			fmt.Printf("%s: %s\n", name, value)
		}
		fmt.Println()
	}
	os.Stdout.Write(resp.Body)
}
