// Package ec2 contains the EC2 resource types used alongside the private
// gateway, currently the VPC interface endpoint the gateway is restricted to.
package ec2
