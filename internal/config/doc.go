// Package config provides configuration for the vroute server.
//
// The configuration is stored in vroute.json. Every field can be
// overridden with a VROUTE_* environment variable, which wins over the
// file.
//
// # Configuration File Structure
//
//	{
//	  "addr": ":3000",
//	  "baseURL": "https://app.example.com",
//	  "title": "My App",
//	  "logLevel": "info",
//	  "metrics": true,
//	  "assets": {
//	    "dir": "dist/assets",
//	    "prefix": "/assets/",
//	    "manifest": "dist/manifest.json",
//	    "scripts": ["app.js"],
//	    "styleSheets": ["app.css"]
//	  }
//	}
//
// The hydration secret and S3 credentials are only read from the
// environment.
//
// # Usage
//
//	cfg, err := config.Load("vroute.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Addr)
package config
